package partition

import "fmt"

// Kind identifies the logical role of a partition inside a wic image.
type Kind int

const (
	Boot Kind = iota
	RootA
	Cert
	Factory
)

var kindNames = map[Kind]string{
	Boot:    "boot",
	RootA:   "rootA",
	Cert:    "cert",
	Factory: "factory",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a partition name as used in request strings and CLI flags.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown partition %q: use either boot, rootA, cert or factory", ErrConfig, s)
}
