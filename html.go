/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/Seednode/memebattle/games"
	"github.com/julienschmidt/httprouter"
)

//go:embed memes/*
var memes embed.FS

var views = template.Must(template.New("memes").Funcs(template.FuncMap{
	"delay":     func(i int) int { return i * 100 },
	"awardIcon": awardIcon,
	"revealed": func(r *games.Reveal, id string) bool {
		return r != nil && r.Revealed(id)
	},
	"voteLabel": games.VoteLabel,
}).ParseFS(memes, "memes/*.html"))

func awardIcon(a games.Award) string {
	switch a {
	case games.AwardTrophy:
		return "🏆"
	case games.AwardMedal:
		return "🥈"
	case games.AwardRibbon:
		return "🥉"
	default:
		return "👍"
	}
}

type layout struct {
	Title   string
	Page    string
	Prefix  string
	Favicon template.HTML
	Body    template.HTML
}

func renderLayout(cfg *Config, page string, body template.HTML) ([]byte, error) {
	var buf bytes.Buffer

	err := views.ExecuteTemplate(&buf, "page", layout{
		Title:   "Meme Battle",
		Page:    page,
		Prefix:  cfg.prefix,
		Favicon: template.HTML(getFavicon(cfg)),
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
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
