package routes

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Marufhossain07/fit-sync-backend/internal/config"
)

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      color-scheme: light;
      --bg: #f6f7f4;
      --panel: #ffffff;
      --text: #132019;
      --muted: #536258;
      --accent: #1f6f4a;
      --border: #d8ddd6;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: Georgia, "Times New Roman", serif;
      color: var(--text);
      background: linear-gradient(180deg, #fcfcfa 0%, var(--bg) 100%);
    }
    main {
      max-width: 960px;
      margin: 0 auto;
      padding: 48px 20px 64px;
    }
    .hero, .panel {
      background: var(--panel);
      border: 1px solid var(--border);
      border-radius: 18px;
      padding: 28px;
      margin-bottom: 20px;
    }
    .hero h1 { margin: 0 0 12px; font-size: 2.4rem; }
    .hero p { margin: 0; color: var(--muted); line-height: 1.6; }
    table { width: 100%; border-collapse: collapse; font-size: 0.95rem; }
    th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid var(--border); }
    th { color: var(--muted); font-weight: 600; }
    code {
      font-family: "SFMono-Regular", Menlo, Consolas, monospace;
      font-size: 0.85rem;
      color: var(--accent);
    }
    .guard { color: var(--muted); font-size: 0.85rem; }
    footer { color: var(--muted); font-size: 0.8rem; margin-top: 24px; }
  </style>
</head>
<body>
  <main>
    <section class="hero">
      <h1>{{ .Title }}</h1>
      <p>Development reference for the FitSync HTTP API. Guarded routes expect
      a bearer token from <code>POST /jwt</code>; role guards read the users
      table.</p>
    </section>
    {{ range .Groups }}
    <section class="panel">
      <h2>{{ .Name }}</h2>
      <table>
        <thead><tr><th>Method</th><th>Path</th><th>Guard</th><th>Description</th></tr></thead>
        <tbody>
          {{ range .Endpoints }}
          <tr>
            <td><code>{{ .Method }}</code></td>
            <td><code>{{ .Path }}</code></td>
            <td class="guard">{{ .Guard }}</td>
            <td>{{ .Description }}</td>
          </tr>
          {{ end }}
        </tbody>
      </table>
    </section>
    {{ end }}
    <footer>Rendered {{ .LoadedAt }}. Enabled only when APP_ENV=development and ENABLE_API_DOCS=true.</footer>
  </main>
</body>
</html>`

type docsEndpoint struct {
	Method      string
	Path        string
	Guard       string
	Description string
}

type docsGroup struct {
	Name      string
	Endpoints []docsEndpoint
}

type docsPageData struct {
	Title    string
	LoadedAt string
	Groups   []docsGroup
}

func docsEndpointGroups() []docsGroup {
	return []docsGroup{
		{
			Name: "Sessions and accounts",
			Endpoints: []docsEndpoint{
				{"POST", "/jwt", "public", "Issue a 24h bearer token for an email."},
				{"POST", "/users", "public", "Upsert a user by email on sign-in."},
				{"PATCH", "/user", "auth", "Rename the caller on users and trainer profile."},
				{"GET", "/users/admin/:email", "auth", "Report whether the caller is an admin."},
				{"GET", "/from-users/trainer/:email", "auth", "Report whether the caller is a trainer."},
			},
		},
		{
			Name: "Trainers",
			Endpoints: []docsEndpoint{
				{"POST", "/trainer", "auth", "Apply to become a trainer."},
				{"GET", "/trainer", "public", "List accepted trainers."},
				{"GET", "/trainer/details/:email", "public", "Trainer profile by email."},
				{"GET", "/trainer/:name", "public", "Accepted trainers matching a skill."},
				{"GET", "/applied", "admin", "List pending applications."},
				{"GET", "/applied/:id", "admin", "Pending application by id."},
				{"PATCH", "/applied/:email", "admin", "Approve an application."},
				{"PUT", "/trainer/feedback", "admin", "Reject an application with feedback."},
				{"DELETE", "/trainer", "admin", "Revoke trainer status."},
				{"GET", "/activity-log", "auth", "Pending and rejected applications."},
			},
		},
		{
			Name: "Classes",
			Endpoints: []docsEndpoint{
				{"POST", "/add-class", "admin", "Create a class."},
				{"GET", "/classes", "public", "All classes."},
				{"GET", "/all-classes", "public", "Paginated class search."},
				{"GET", "/classes-count", "public", "Class count for a search."},
				{"GET", "/featured-classes", "public", "Top classes by booking count."},
			},
		},
		{
			Name: "Slots and payments",
			Endpoints: []docsEndpoint{
				{"POST", "/slot", "trainer", "Publish a bookable slot."},
				{"GET", "/slot/:email", "auth", "A trainer's slots."},
				{"GET", "/available-slots/:email", "public", "A trainer's unbooked slots."},
				{"GET", "/book-slot/:id", "auth", "Slot detail for booking."},
				{"DELETE", "/slot/:id/:email", "trainer", "Withdraw an unwanted slot."},
				{"POST", "/payment", "auth", "Record a paid booking."},
			},
		},
		{
			Name: "Community",
			Endpoints: []docsEndpoint{
				{"POST", "/forum", "auth", "Publish a forum post."},
				{"GET", "/forum", "public", "Paginated forum posts."},
				{"PATCH", "/forum/upvote/:id", "auth", "Upvote a post."},
				{"PATCH", "/forum/downvote/:id", "auth", "Downvote a post."},
				{"POST", "/review", "auth", "Leave a review."},
				{"GET", "/review", "public", "All reviews."},
				{"POST", "/subscribe", "public", "Join the newsletter."},
			},
		},
		{
			Name: "Admin",
			Endpoints: []docsEndpoint{
				{"GET", "/subscribe", "admin", "List subscribers."},
				{"DELETE", "/subscribe/:id", "admin", "Remove a subscriber."},
				{"GET", "/balance/stats", "admin", "Financial and membership overview."},
			},
		},
	}
}

func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	indexTemplate, err := template.New("docs-index").Parse(docsIndexHTML)
	if err != nil {
		return fmt.Errorf("parse docs template: %w", err)
	}

	pageData := docsPageData{
		Title:    "FitSync API Docs",
		LoadedAt: time.Now().UTC().Format(time.RFC3339),
		Groups:   docsEndpointGroups(),
	}

	indexHandler := func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c, fiber.MIMETextHTMLCharsetUTF8)
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; img-src 'self' data:; base-uri 'none'; form-action 'none'; frame-ancestors 'none'")

		var body bytes.Buffer
		if err := indexTemplate.Execute(&body, pageData); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render api docs")
		}

		return c.Status(fiber.StatusOK).Send(body.Bytes())
	}

	app.Get("/docs", indexHandler)
	app.Get("/docs/", indexHandler)

	return nil
}

func applyDocsBaseHeaders(c *fiber.Ctx, contentType string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
