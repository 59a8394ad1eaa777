package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fulldump/listdb/bootstrap"
	"github.com/fulldump/listdb/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func(worker int)) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			f(worker)
		}(i)
	}
	wg.Wait()
}

func TempDir() (string, func()) {
	dir, err := os.MkdirTemp("", "listdb_bench_*")
	if err != nil {
		panic("Could not create temp directory: " + err.Error())
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConnsPerHost: 1024,
			MaxIdleConns:        1024,
		},
		Timeout: 10 * time.Second,
	}
}

func CreateDocument(base string) string {

	name := "doc-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	payload, _ := json.Marshal(JSON{"name": name})

	resp, err := http.Post(base+"/v1/documents", "application/json", bytes.NewReader(payload))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	io.Copy(os.Stdout, resp.Body)

	return name
}

func Post(client *http.Client, url string, payload any) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bad status: %s", resp.Status)
	}
	return nil
}

// CreateServer starts an in-process server over a temporary directory and
// returns its data directory.
func CreateServer(c *Config) (dir string, stop func()) {
	dir, cleanup := TempDir()
	cleanups = append(cleanups, cleanup)

	conf := configuration.Default()
	conf.Dir = dir
	conf.HttpAddr = c.Addr
	conf.LogLevel = "warn"
	c.Base = "http://" + c.Addr

	start, stop, err := bootstrap.Bootstrap(&conf)
	if err != nil {
		fmt.Println("ERROR: bootstrap:", err.Error())
		os.Exit(2)
	}
	go start()

	// wait until the database is loaded
	for i := 0; i < 100; i++ {
		resp, err := http.Get(c.Base + "/v1/documents")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	return dir, stop
}
