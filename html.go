/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

func serveHomePage(cfg *Config) httprouter.Handle {
	var home strings.Builder

	home.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	home.WriteString(getFavicon())
	home.WriteString(`<title>moviechain</title>`)
	home.WriteString(`<style>body{font-family:sans-serif;max-width:32rem;margin:2rem auto;padding:0 1rem;}`)
	home.WriteString(`a{display:block;padding:1rem;margin:1rem 0;border:1px solid #ccc;border-radius:.5rem;text-decoration:none;color:inherit;}</style>`)
	home.WriteString(`</head><body><h1>moviechain</h1>`)
	home.WriteString(`<a href="` + cfg.prefix + `/moviechain"><b>Movie Chain</b><br>Take turns linking movies through their actors and directors.</a>`)
	home.WriteString(`<a href="` + cfg.prefix + `/namefive"><b>Name Five</b><br>Name five things before the timer runs out.</a>`)
	home.WriteString(`</body></html>`)

	page := home.String()

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, _ = w.Write([]byte(page))
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := `User-agent: Amazonbot
Disallow: /

User-agent: Applebot-Extended
Disallow: /

User-agent: Bytespider
Disallow: /

User-agent: CCBot
Disallow: /

User-agent: ClaudeBot
Disallow: /

User-agent: Google-Extended
Disallow: /

User-agent: GPTBot
Disallow: /

User-agent: meta-externalagent
Disallow: /`

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
