package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxDevices int = 1000
var httpHostPort string = "127.0.0.1:1080"

var authToken string

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	authToken = signUp()
	fmt.Printf("benchmark user signed up\n")

	deviceIDs := make([]string, maxDevices)
	for i := 0; i < maxDevices; i++ {
		deviceIDs[i] = "device_bench_" + uuid.NewString()
	}
	fmt.Printf("generated %v device IDs\n", maxDevices)

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			registerDevice(deviceIDs[i], i)
			fmt.Printf("\rregistered device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxDevices; i++ {
		i := i
		wg.Add(1)
		go func() {
			sendCommand(deviceIDs[i], "ring")
			sendCommand(deviceIDs[i], "stop")
			sendCommand(deviceIDs[i], "found")
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rsent commands for %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxDevices, usedTime.Seconds(), float64(maxDevices*3)/usedTime.Seconds(),
	)
}

func signUp() string {
	body, _ := json.Marshal(map[string]string{
		"email":    fmt.Sprintf("bench-%s@example.com", uuid.NewString()[:8]),
		"password": "benchmark-pass",
	})
	resp, err := http.Post(
		fmt.Sprintf("http://%s/auth/signup", httpHostPort),
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		log.Fatal("signup failed:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("signup failed with status %v", resp.StatusCode)
	}

	var parsed map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Fatal("signup response decode failed:", err)
	}
	return parsed["token"]
}

func doAuthed(method, url string, payload any) *http.Response {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		log.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	return resp
}

func registerDevice(deviceID string, i int) {
	resp := doAuthed(
		"POST",
		fmt.Sprintf("http://%s/devices/%s/register", httpHostPort, deviceID),
		map[string]string{
			"name":     fmt.Sprintf("Bench Phone %v", i),
			"platform": "android",
		},
	)
	resp.Body.Close()
}

func sendCommand(deviceID, cmdType string) {
	resp := doAuthed(
		"POST",
		fmt.Sprintf("http://%s/devices/%s/commands", httpHostPort, deviceID),
		map[string]string{"type": cmdType},
	)
	resp.Body.Close()
}
