// Command issue-token prints a bearer token for a household member, for use
// by the chat bot or another trusted client.
//
// Usage:
//
//	issue-token --user 111 --client bot [--config path]
//
// Only the auth section of the configuration is used.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/heartmarshall/family-planner/internal/auth"
	"github.com/heartmarshall/family-planner/internal/config"
)

func main() {
	userFlag := flag.Int64("user", 0, "external id of the user")
	clientFlag := flag.String("client", "bot", "client name recorded in the token")
	configFlag := flag.String("config", "", "path to config YAML (default: $CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	if *userFlag <= 0 {
		log.Fatal("--user must be a positive external id")
	}

	cfg, err := config.LoadFile(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwt.GenerateAccessToken(*userFlag, *clientFlag)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Println(token)
}
