package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var extCmd = &cobra.Command{
	Use:   "ext",
	Short: "Query loaded extensions",
}

var extListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext()
		if err != nil {
			return err
		}

		names := ctx.LoadedExtensions()
		if len(names) == 0 {
			fmt.Println("no extensions loaded")
			return nil
		}
		heading := headingPrinter()
		for _, name := range names {
			routines, _ := ctx.ExtensionRoutines(name)
			types, _ := ctx.ExtensionTypes(name)
			fmt.Printf("%s  (%d routines, %d types)\n", heading(name), len(routines), len(types))
		}
		return nil
	},
}

var extInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show the routines and types one extension contributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newContext()
		if err != nil {
			return err
		}

		name := args[0]
		if !ctx.IsExtensionLoaded(name) {
			return fmt.Errorf("extension %q is not loaded", name)
		}

		heading := headingPrinter()
		routines, _ := ctx.ExtensionRoutines(name)
		types, _ := ctx.ExtensionTypes(name)

		fmt.Println(heading("routines"))
		for _, r := range routines {
			fmt.Printf("  %s\n", r)
		}
		fmt.Println(heading("types"))
		for _, t := range types {
			fmt.Printf("  %s\n", t)
		}
		return nil
	},
}

func init() {
	extCmd.AddCommand(extListCmd)
	extCmd.AddCommand(extInfoCmd)
}

func headingPrinter() func(a ...interface{}) string {
	if !stdoutIsTerminal() {
		return fmt.Sprint
	}
	return color.New(color.FgCyan, color.Bold).SprintFunc()
}
