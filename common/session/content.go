package session

import (
	"github.com/simophin/cpxy/common/cache"
)

type sessionKey byte

const (
	idSessionKey sessionKey = iota
	inboundSessionKey
	sniffedSessionKey
)

type Content interface {
	SetID(ID)
	GetID() (ID, bool)
	SetInbound(Inbound)
	GetInbound() (Inbound, bool)
	SetSniffed(Sniffed)
	GetSniffed() (Sniffed, bool)

	Close() error
}

type content struct {
	cache.Pool
}

func NewContent() Content {
	return &content{
		Pool: cache.NewPool(),
	}
}

func (c *content) SetID(id ID) {
	c.Set(idSessionKey, id)
}

func (c *content) GetID() (ID, bool) {
	if id, ok := c.Get(idSessionKey); ok {
		return id.(ID), true
	}
	return 0, false
}

func (c *content) SetInbound(inbound Inbound) {
	c.Set(inboundSessionKey, inbound)
}

func (c *content) GetInbound() (Inbound, bool) {
	if inbound, ok := c.Get(inboundSessionKey); ok {
		return inbound.(Inbound), true
	}
	return Inbound{}, false
}

func (c *content) SetSniffed(sniffed Sniffed) {
	c.Set(sniffedSessionKey, sniffed)
}

func (c *content) GetSniffed() (Sniffed, bool) {
	if sniffed, ok := c.Get(sniffedSessionKey); ok {
		return sniffed.(Sniffed), true
	}
	return Sniffed{}, false
}
