package setting

type ListenMode byte

const (
	// ListenTProxy needs CAP_NET_ADMIN and iptables TPROXY rules;
	// replies are spoofed from the original destination.
	ListenTProxy ListenMode = iota
	// ListenRedirect recovers original destinations without privilege;
	// replies come from the proxy address.
	ListenRedirect
	// ListenPlain is an ordinary UDP listener with no destination
	// recovery; every session goes to the configured forward address.
	ListenPlain
)
