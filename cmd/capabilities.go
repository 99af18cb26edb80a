package cmd

import (
	"fmt"
	"sort"

	"github.com/viant/agentbridge/capability"
)

// CapabilitiesCmd lists the declared callables and tools of every registered
// instance.
type CapabilitiesCmd struct {
	JSON bool `long:"json" description:"print as JSON"`
}

type capabilityInfo struct {
	Instance    string `json:"instance"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Owner       string `json:"owner"`
	Description string `json:"description,omitempty"`
}

func (c *CapabilitiesCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	instances := svc.Instances()
	names := make([]string, 0, len(instances))
	for name := range instances {
		names = append(names, name)
	}
	sort.Strings(names)

	var infos []capabilityInfo
	for _, name := range names {
		for _, discover := range []func(any) (*capability.Set, error){capability.Callables, capability.Tools} {
			set, err := discover(instances[name])
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			for _, b := range set.Bindings() {
				infos = append(infos, capabilityInfo{
					Instance:    name,
					Name:        b.Name,
					Kind:        b.Kind.String(),
					Owner:       b.Owner(),
					Description: b.Description,
				})
			}
		}
	}
	if c.JSON {
		return printJSON(infos)
	}
	for _, info := range infos {
		fmt.Printf("%s\t%-8s\t%s\t%s\t%s\n", info.Instance, info.Kind, info.Name, info.Owner, info.Description)
	}
	return nil
}
