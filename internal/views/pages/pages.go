package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"pigmento/internal/inventory"
)

func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/assets/app.css"><script src="/assets/htmx.min.js" defer></script></head><body><main id="main">`, html.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return page("Sign in · Pigmento", LoginPartial(message, email))
}

// LoginPartial renders only the sign-in form, used for HTMX swaps.
func LoginPartial(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="auth-card"><h1>Pigmento</h1>`); err != nil {
			return err
		}
		if err := writeFlash(w, message); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/login" hx-post="/login" hx-target="#main"><label>Email<input type="email" name="email" value="%s" required></label><label>Password<input type="password" name="password" required></label><button type="submit">Sign in</button></form><p><a href="/signup">Create an account</a></p></section>`, html.EscapeString(email))
		return err
	})
}

// Signup renders the full registration page.
func Signup(message, name, email string) templ.Component {
	return page("Create account · Pigmento", SignupPartial(message, name, email))
}

// SignupPartial renders only the registration form.
func SignupPartial(message, name, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="auth-card"><h1>Create your account</h1>`); err != nil {
			return err
		}
		if err := writeFlash(w, message); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="/signup" hx-post="/signup" hx-target="#main"><label>Name<input type="text" name="name" value="%s"></label><label>Email<input type="email" name="email" value="%s" required></label><label>Password<input type="password" name="password" required></label><label>Confirm password<input type="password" name="confirm_password" required></label><button type="submit">Create account</button></form><p><a href="/login">Back to sign in</a></p></section>`, html.EscapeString(name), html.EscapeString(email))
		return err
	})
}

// Home renders the public landing page.
func Home() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="landing"><h1>Pigmento</h1><p>Recipes, production orders and pigment inventory for the compounding workshop.</p><p><a class="button" href="/login">Sign in</a> <a href="/signup">Create an account</a></p></section>`)
		return err
	})
	return page("Pigmento", body)
}

// Dashboard renders the authenticated workspace with the current worksheet
// snapshot.
func Dashboard(snapshot WorkspaceSnapshot) templ.Component {
	return page("Workshop · Pigmento", DashboardPartial(snapshot))
}

// DashboardPartial renders the workspace body for HTMX swaps.
func DashboardPartial(snapshot WorkspaceSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header class="topbar"><span class="brand">Pigmento</span><nav><a href="/app">Workshop</a><a href="/logout">Sign out</a></nav></header><section class="workspace"><div class="counts"><span>%d customers</span><span>%d pigments</span><span>%d recipes</span><span>%d orders</span><span>%d stock entries</span></div>`, len(snapshot.Customers), len(snapshot.Pigments), len(snapshot.Recipes), len(snapshot.Orders), len(snapshot.StockEntries)); err != nil {
			return err
		}

		if len(snapshot.Warnings) > 0 {
			if _, err := fmt.Fprintf(w, `<p class="warnings">%d worksheet cells could not be parsed and were treated as empty.</p>`, len(snapshot.Warnings)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<table class="recipes"><thead><tr><th>Code</th><th>Customer</th><th>Color</th><th>Pantone</th><th>Status</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, recipe := range snapshot.SortedRecipes() {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				html.EscapeString(recipe.Code),
				html.EscapeString(snapshot.CustomerName(recipe.Customer)),
				html.EscapeString(recipe.ColorName),
				html.EscapeString(recipe.Pantone),
				html.EscapeString(recipe.Status),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<table class="orders"><thead><tr><th>Order</th><th>Produced</th><th>Recipe</th><th>Customer</th><th>Packed</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, order := range snapshot.SortedOrders() {
			produced := ""
			if !order.ProducedAt.IsZero() {
				produced = order.ProducedAt.Format("2006-01-02")
			}
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				html.EscapeString(order.Number),
				produced,
				html.EscapeString(order.RecipeCode),
				html.EscapeString(snapshot.CustomerName(order.Customer)),
				inventory.FormatGrams(order.TotalPackedWeight()*1000),
			); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table></section>`)
		return err
	})
}

func writeFlash(w io.Writer, message string) error {
	if message == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="flash">%s</p>`, html.EscapeString(message))
	return err
}
