package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/listdb/bootstrap"
	"github.com/fulldump/listdb/configuration"
)

var banner = `
 _     _     _   ____  ____
| |   (_)___| |_|  _ \| __ )
| |   | / __| __| | | |  _ \
| |___| \__ \ |_| |_| | |_) |
|_____|_|___/\__|____/|____/
          version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	logger, err := bootstrap.NewLogger(c.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		os.Exit(1)
	}
	slog.SetDefault(logger)

	start, _, err := bootstrap.Bootstrap(&c)
	if err != nil {
		slog.Error("bootstrap", "err", err)
		os.Exit(1)
	}

	start()
}
