package proxyman

type Inbound interface {
	Close() error

	Tag() string
}
