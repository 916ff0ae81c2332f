package mermaid_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/archdiagram/pkg/mermaid"
)

func ExampleExtractBlock() {
	response := "Here you go:\n```mermaid\ngraph TD\n    A-->B\n```"

	block, err := mermaid.ExtractBlock(context.Background(), response, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%q\n", block.Body)
	// Output: "\ngraph TD\n    A-->B\n"
}

func ExampleDetectCycle() {
	body := `
subgraph Backend
    subgraph Backend[Services]
    end
end`

	fmt.Println(mermaid.DetectCycle(body))
	// Output: cycle at "Backend"
}
