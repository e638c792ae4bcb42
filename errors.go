/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Failure taxonomy for caller-facing actions. These are reported back to
// the initiating connection as structured ack messages, never as faults;
// a rejected action leaves its room untouched.
var (
	errRoomNotFound = errors.New("room not found")
	errRoomFull     = errors.New("room full")
	errTooManyRooms = errors.New("room limit reached")
	errUnauthorized = errors.New("not allowed")
	errInvalidInput = errors.New("invalid input")
	errRateLimited  = errors.New("slow down")
	errPrecondition = errors.New("precondition failed")

	errNotEnoughPlayers = fmt.Errorf("%w: need at least 2 players", errPrecondition)
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon())
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
