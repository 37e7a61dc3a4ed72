package inbound

import (
	"github.com/simophin/cpxy/app/proxyman"
	"github.com/simophin/cpxy/common/cache"
)

type Manager interface {
	Get(interface{}) (proxyman.Inbound, bool)
	Add(interface{}, proxyman.Inbound)
	Delete(interface{})
	Range(func(proxyman.Inbound) bool)
}

type manager struct {
	pool cache.Pool
}

func NewManager() Manager {
	return &manager{
		pool: cache.NewPool(),
	}
}

func (m *manager) Get(key interface{}) (proxyman.Inbound, bool) {
	if handler, ok := m.pool.Get(key); ok {
		return handler.(proxyman.Inbound), true
	}
	return nil, false
}

func (m *manager) Add(key interface{}, handler proxyman.Inbound) {
	m.pool.Set(key, handler)
}

func (m *manager) Delete(key interface{}) {
	if _, ok := m.pool.Get(key); ok {
		m.pool.Delete(key)
	}
}

func (m *manager) Range(fn func(proxyman.Inbound) bool) {
	m.pool.Range(func(_, v interface{}) bool {
		return fn(v.(proxyman.Inbound))
	})
}
