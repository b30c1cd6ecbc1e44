package main

import (
	"context"

	"github.com/faizmokh/mood/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
