package cmd

import "fmt"

// StateCmd prints the state of the default agent.
type StateCmd struct{}

func (c *StateCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	if svc.Agent() == nil {
		return fmt.Errorf("no agent configured")
	}
	return printJSON(svc.Agent().State())
}
