package cmd

import (
	"fmt"
	"sort"

	"github.com/viant/agentbridge/mcp/action"
)

// ListActionsCmd prints every fluxor service and its action methods.
// Callables are marked since they are not published as tools.
type ListActionsCmd struct{}

func (c *ListActionsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	actions := svc.WorkflowService().Actions()
	names := actions.Services()
	sort.Strings(names)
	for _, name := range names {
		s := actions.Lookup(name)
		if s == nil {
			continue
		}
		fmt.Println(name)
		sigs := append(s.Methods()[:0:0], s.Methods()...)
		sort.Slice(sigs, func(i, j int) bool { return sigs[i].Name < sigs[j].Name })
		for i := range sigs {
			marker := ""
			if action.Hidden(s, &sigs[i]) {
				marker = " (callable)"
			}
			fmt.Printf("  %s%s\t%s\n", sigs[i].Name, marker, sigs[i].Description)
		}
	}
	return nil
}
