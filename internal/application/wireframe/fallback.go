package wireframe

import (
	"fmt"
	"html"
	"strings"
)

const (
	containerOpen = `<div class="wireframe-container" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background: #f5f5f5;">`
	card          = `background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);`
	heading       = `text-align: center; color: #333; margin-bottom: 30px;`
	label         = `display: block; margin-bottom: 5px; color: #666;`
	input         = `width: 100%; padding: 12px; border: 1px solid #ddd; border-radius: 4px; box-sizing: border-box;`
	panel         = `background: #f8f9fa; padding: 20px; border-radius: 8px; border: 1px solid #e9ecef;`
)

// Fallback renders a fixed wireframe chosen by keywords in the prompt. It is
// used whenever the language model is not configured or fails.
func Fallback(prompt, color string) string {
	lower := strings.ToLower(prompt)
	var b strings.Builder
	b.WriteString(containerOpen)
	switch {
	case strings.Contains(lower, "login") || strings.Contains(lower, "sign in"):
		b.WriteString(loginForm(color))
	case strings.Contains(lower, "contact") || strings.Contains(lower, "form"):
		b.WriteString(contactForm(color))
	case strings.Contains(lower, "dashboard"):
		b.WriteString(dashboard(color))
	default:
		b.WriteString(generic(prompt, color))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func field(name, typ, placeholder string) string {
	return fmt.Sprintf(`<div style="margin-bottom: 20px;"><label style="%s">%s</label><input type="%s" placeholder="%s" style="%s"></div>`,
		label, name, typ, placeholder, input)
}

func button(text, color string) string {
	return fmt.Sprintf(`<button style="width: 100%%; padding: 12px; background: %s; color: white; border: none; border-radius: 4px; font-size: 16px; cursor: pointer;">%s</button>`,
		color, text)
}

func loginForm(color string) string {
	return fmt.Sprintf(`<div style="%s"><h2 style="%s">Login</h2>%s%s%s<div style="text-align: center; margin-top: 20px;"><a href="#" style="color: %s; text-decoration: none;">Forgot Password?</a></div></div>`,
		card, heading,
		field("Email", "email", "Enter your email"),
		field("Password", "password", "Enter your password"),
		button("Sign In", color), color)
}

func contactForm(color string) string {
	message := fmt.Sprintf(`<div style="margin-bottom: 20px;"><label style="%s">Message</label><textarea placeholder="Your message" rows="4" style="%s resize: vertical;"></textarea></div>`,
		label, input)
	return fmt.Sprintf(`<div style="%s"><h2 style="%s">Contact Us</h2>%s%s%s%s</div>`,
		card, heading,
		field("Name", "text", "Your name"),
		field("Email", "email", "Your email"),
		message, button("Send Message", color))
}

func dashboard(color string) string {
	tile := func(title, text string) string {
		return fmt.Sprintf(`<div style="%s"><h3 style="margin: 0 0 10px 0; color: #333;">%s</h3><p style="margin: 0; color: #666;">%s</p></div>`,
			panel, title, text)
	}
	return fmt.Sprintf(`<div style="background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">`+
		`<div style="background: %s; color: white; padding: 20px; border-radius: 8px 8px 0 0;"><h2 style="margin: 0;">Dashboard</h2></div>`+
		`<div style="padding: 20px;"><div style="display: grid; grid-template-columns: 1fr 1fr; gap: 20px; margin-bottom: 20px;">%s%s</div>`+
		`<div style="%s"><h3 style="margin: 0 0 10px 0; color: #333;">Quick Actions</h3>`+
		`<button style="padding: 8px 16px; background: %s; color: white; border: none; border-radius: 4px; margin-right: 10px;">New Project</button>`+
		`<button style="padding: 8px 16px; background: #6c757d; color: white; border: none; border-radius: 4px;">View Reports</button></div></div></div>`,
		color, tile("Stats", "View your analytics"), tile("Recent", "Latest activities"), panel, color)
}

func generic(prompt, color string) string {
	return fmt.Sprintf(`<div style="%s"><h2 style="%s">Wireframe</h2><div style="%s margin-bottom: 20px;"><p style="margin: 0; color: #666; text-align: center;">Content area for: %s</p></div><div style="text-align: center;"><button style="padding: 12px 24px; background: %s; color: white; border: none; border-radius: 4px; font-size: 16px; cursor: pointer;">Action Button</button></div></div>`,
		card, heading, panel, html.EscapeString(prompt), color)
}
