// Package address defines the structured identifier for wiring instances.
//
// Every node in the instance graph has a canonical address of the form
// `<kind>.<type>.<name>`, for example `service.http_client.shared` or
// `screen.checkout.main`. Wiring files reference instances by these
// addresses, both in `needs` expressions and in `depends_on` lists.
package address

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Kind distinguishes the two classes of wiring instances.
type Kind string

const (
	// KindService addresses a provided service instance.
	KindService Kind = "service"
	// KindScreen addresses a wired screen instance.
	KindScreen Kind = "screen"
)

// segmentRegex validates a single address segment, e.g. `http_client`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Address is the structured representation of a unique instance identifier.
type Address struct {
	Kind Kind
	Type string
	Name string
}

// Parse creates an Address from its canonical string representation.
func Parse(raw string) (*Address, error) {
	segments := strings.Split(raw, ".")
	if len(segments) != 3 {
		return nil, fmt.Errorf("invalid instance address %q: want <kind>.<type>.<name>", raw)
	}

	kind := Kind(segments[0])
	if kind != KindService && kind != KindScreen {
		return nil, fmt.Errorf("invalid instance address %q: unknown kind %q", raw, segments[0])
	}

	for _, segment := range segments[1:] {
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid instance address %q: bad segment %q", raw, segment)
		}
	}

	return &Address{Kind: kind, Type: segments[1], Name: segments[2]}, nil
}

// ParsePair parses a `depends_on` entry of the form `<type>.<name>`. The
// kind is intentionally absent: the graph linker resolves the pair against
// both services and screens.
func ParsePair(raw string) (typeName, instanceName string, err error) {
	segments := strings.Split(raw, ".")
	if len(segments) != 2 {
		return "", "", fmt.Errorf("invalid dependency reference %q: want <type>.<name>", raw)
	}
	for _, segment := range segments {
		if !segmentRegex.MatchString(segment) {
			return "", "", fmt.Errorf("invalid dependency reference %q: bad segment %q", raw, segment)
		}
	}
	return segments[0], segments[1], nil
}

// FromTraversal extracts an Address from an HCL variable traversal such as
// `service.http_client.shared`. The second return value is false when the
// traversal does not name a wiring instance at all.
func FromTraversal(traversal hcl.Traversal) (*Address, bool) {
	if len(traversal) < 3 {
		return nil, false
	}

	kind := Kind(traversal.RootName())
	if kind != KindService && kind != KindScreen {
		return nil, false
	}

	typeAttr, typeOk := traversal[1].(hcl.TraverseAttr)
	nameAttr, nameOk := traversal[2].(hcl.TraverseAttr)
	if !typeOk || !nameOk {
		return nil, false
	}

	return &Address{Kind: kind, Type: typeAttr.Name, Name: nameAttr.Name}, true
}

// String serializes the Address into its canonical form.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s", a.Kind, a.Type, a.Name)
}

// Equal checks two addresses for equality.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}
