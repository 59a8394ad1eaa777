package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | APPEND | REMOVE"`
	Base    string `usage:"base URL, empty starts an in-process server"`
	Addr    string `usage:"address for the in-process server"`
	N       int64  `usage:"number of records"`
	Workers int    `usage:"number of workers"`
}

var cleanups []func()

func main() {

	defer func() {
		fmt.Println("Cleaning up...")
		for _, cleanup := range cleanups {
			cleanup()
		}
	}()

	c := Config{
		Test:    "append",
		Base:    "",
		Addr:    "127.0.0.1:8765",
		N:       10_000,
		Workers: 16,
	}
	goconfig.Read(&c)

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestAppend(c)
		TestRemove(c)
	case "APPEND":
		TestAppend(c)
	case "REMOVE":
		TestRemove(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

}
