package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refactorkit/internal/refactor"
)

func newConcernsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "concerns",
		Short: "List the available concerns in pipeline order",
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range refactor.AllConcerns() {
				fmt.Println(c)
			}
		},
	}
}
