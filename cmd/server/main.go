package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"os"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"rico-32/internal/api"
	"rico-32/internal/server"
)

const (
	defaultAddr   = ":2222"
	statsviewAddr = "localhost:12600"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", defaultAddr, "listen address (PORT overrides the port)")
	hostKeyPath := flag.String("hostkey", "host_key", "SSH host key, generated if missing")
	sheetDir := flag.String("sheets", "assets/sheets", "directory of per-user sprite sheets")
	fps := flag.Int("fps", api.DefaultFrameRate, "frame rate limit per session")
	workers := flag.Int("workers", 1, "compositing goroutines per session")
	stats := flag.Bool("statsview", false, "serve runtime charts on "+statsviewAddr)
	flag.Parse()

	// Generate host key if it doesn't exist
	if err := ensureHostKey(*hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	if *stats {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(statsviewAddr))
			statsview.New().Start()
		}()
		log.Printf("Stats available at http://%s/debug/statsview", statsviewAddr)
	}

	// Start SSH server (blocks)
	listenAddr := *addr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, *hostKeyPath, *sheetDir, *workers)
	sshServer.LimitFrameRate(*fps)
	log.Printf("Starting RICO-32, connect with: ssh -t -p %s YourName@localhost", listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
