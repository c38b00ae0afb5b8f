package main

import (
	"net/http"
	"os"
	"time"
)

const defaultHealthUrl = "http://localhost:11223/health"

// main checks the health endpoint of the contact API. The URL may be passed as first argument.
// Exit code 0 is returned for a 2xx response, 1 otherwise.
func main() {
	os.Exit(checkWebEndpointFromArgs(os.Args[1:]))
}

func checkWebEndpointFromArgs(args []string) int {
	url := defaultHealthUrl
	if len(args) > 0 && args[0] != "" {
		url = args[0]
	}
	if !checkWebEndpoint(url) {
		return 1
	}
	return 0
}

func checkWebEndpoint(url string) bool {
	client := &http.Client{
		Timeout: time.Second * 2,
	}
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
