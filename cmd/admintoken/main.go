package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-chi/jwtauth/v5"
	"go-payout/cmd/payoutdesk/config"
	"go-payout/pkg/jwtfactory"
)

func main() {
	subject := flag.String("s", "admin", "Token subject")
	flag.Parse()

	cfg := config.LoadJWT()
	if !cfg.Enabled() {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}

	tokenAuth := jwtauth.New(cfg.Algorithm, []byte(cfg.Secret), nil)
	token, err := jwtfactory.New(tokenAuth, cfg.ExpirationTime).Generate(*subject, jwtfactory.AdminRole)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
