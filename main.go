package main

import (
	"os"

	"github.com/zhengshuai-xiao/streamcount/cmd"
	"github.com/zhengshuai-xiao/streamcount/internal"
)

var logger = internal.GetLogger("streamcount_main")

func main() {
	if err := cmd.Main(os.Args); err != nil {
		logger.Fatal(err)
	}
}
