package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var constsCmd = &cobra.Command{
	Use:   "consts",
	Short: "List constants defined by the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext()
		if err != nil {
			return err
		}

		heading := headingPrinter()
		count := 0
		for name, v := range ctx.Constants() {
			fmt.Printf("%s = %s\n", heading(name), v.Inspect())
			count++
		}
		if count == 0 {
			fmt.Println("no constants defined")
		}
		return nil
	},
}
