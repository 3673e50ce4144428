// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/curioswitch/neonchat/internal/auth"
	"github.com/curioswitch/neonchat/internal/chatdb"
	"github.com/curioswitch/neonchat/internal/config"
	"github.com/curioswitch/neonchat/internal/handler/getmessages"
	"github.com/curioswitch/neonchat/internal/handler/gettheme"
	"github.com/curioswitch/neonchat/internal/handler/resetpassword"
	"github.com/curioswitch/neonchat/internal/handler/sendmessage"
	"github.com/curioswitch/neonchat/internal/handler/settheme"
	"github.com/curioswitch/neonchat/internal/handler/signin"
	"github.com/curioswitch/neonchat/internal/handler/signout"
	"github.com/curioswitch/neonchat/internal/handler/signup"
	"github.com/curioswitch/neonchat/internal/handler/unconfigured"
	"github.com/curioswitch/neonchat/internal/handler/watchmessages"
	"github.com/curioswitch/neonchat/internal/llm"
	"github.com/curioswitch/neonchat/internal/prefs"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

// publicPaths are reachable without a verified ID token.
var publicPaths = map[string]bool{
	"/api/signin":        true,
	"/api/signup":        true,
	"/api/resetpassword": true,
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	if conf.Google.Project == "" {
		// Without store credentials the app cannot function at all, so serve
		// only a static explanation instead of crashing.
		slog.WarnContext(ctx, "main: google.project not set, serving configuration notice only")
		mux.Handle("/*", unconfigured.NewHandler())
		if err := server.Start(ctx, s); err != nil {
			return fmt.Errorf("main: starting server: %w", err)
		}
		return nil
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	var gen llm.Generator
	switch conf.LLM.Provider {
	case "openai":
		oai := openai.NewClient()
		gen = llm.NewOpenAI(&oai, conf.LLM.Model)
	default:
		genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
			Backend: genai.BackendGeminiAPI,
			Project: conf.Google.Project,
		})
		if err != nil {
			return fmt.Errorf("creating genai client: %w", err)
		}
		gen = llm.NewGemini(genAI, conf.LLM.Model)
	}

	store := chatdb.NewStore(firestore, conf.Chat.Window)
	kv := prefs.NewFirestoreKV(firestore)
	toolkit := auth.NewClient(conf.Auth.APIKey)

	fbMW := firebaseauth.NewMiddleware(fbAuth)
	mux.Use(middleware.Maybe(fbMW, func(r *http.Request) bool {
		switch {
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		case publicPaths[r.URL.Path]:
			return false
		default:
			return true
		}
	}))

	mux.Post("/api/signin", signin.NewHandler(toolkit).SignIn)
	mux.Post("/api/signup", signup.NewHandler(toolkit).SignUp)
	mux.Post("/api/resetpassword", resetpassword.NewHandler(toolkit).ResetPassword)
	mux.Post("/api/signout", signout.NewHandler(fbAuth).SignOut)

	mux.Get("/api/messages", getmessages.NewHandler(store).GetMessages)
	mux.Post("/api/messages", sendmessage.NewHandler(store, gen).SendMessage)
	mux.Get("/api/messages/watch", watchmessages.NewHandler(store, gen).WatchMessages)

	mux.Get("/api/theme", gettheme.NewHandler(kv).GetTheme)
	mux.Put("/api/theme", settheme.NewHandler(kv).SetTheme)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
