package main

import (
	"github.com/lectio-cli/lectio/cmd"
	"github.com/lectio-cli/lectio/config"
	"github.com/lectio-cli/lectio/internal/cache"
	"github.com/lectio-cli/lectio/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
