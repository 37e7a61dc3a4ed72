package loader

import (
	"github.com/simophin/cpxy/app/proxyman"
	"github.com/simophin/cpxy/app/proxyman/inbound"
)

var (
	localInstance = &Instance{
		InboundManager: inbound.NewManager(),
	}
)

type Instance struct {
	InboundManager inbound.Manager
}

func RequireInstance() *Instance {
	return localInstance
}

// CloseAll tears down every registered inbound handler.
func CloseAll() {
	var handlers []proxyman.Inbound
	localInstance.InboundManager.Range(func(h proxyman.Inbound) bool {
		handlers = append(handlers, h)
		return true
	})

	for _, h := range handlers {
		localInstance.InboundManager.Delete(h.Tag())
		_ = h.Close()
	}
}
