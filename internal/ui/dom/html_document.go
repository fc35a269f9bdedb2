package dom

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// HTMLDocument is a headless Document backed by goquery. Form control values
// are tracked separately from their default value attributes so that
// ResetForm behaves like a browser form reset.
type HTMLDocument struct {
	mu     sync.Mutex
	doc    *goquery.Document
	values map[*html.Node]string
}

// NewHTMLDocument parses a page.
func NewHTMLDocument(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &HTMLDocument{doc: doc, values: make(map[*html.Node]string)}, nil
}

// ParseHTML parses a page held in a string.
func ParseHTML(page string) (*HTMLDocument, error) {
	return NewHTMLDocument(strings.NewReader(page))
}

// Inspect runs fn against the underlying document under the document lock.
func (d *HTMLDocument) Inspect(fn func(*goquery.Document)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.doc)
}

// Render serialises the whole document.
func (d *HTMLDocument) Render() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return goquery.OuterHtml(d.doc.Selection)
}

func (d *HTMLDocument) find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

func (d *HTMLDocument) Exists(selector string) bool {
	return d.Count(selector) > 0
}

func (d *HTMLDocument) Count(selector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(selector).Length()
}

func (d *HTMLDocument) HTML(selector string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out, err := d.find(selector).First().Html()
	if err != nil {
		return ""
	}
	return out
}

func (d *HTMLDocument) SetHTML(selector, fragment string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel := d.find(selector)
	d.forgetChildren(sel)
	sel.SetHtml(fragment)
}

func (d *HTMLDocument) Prepend(selector, fragment string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.find(selector).PrependHtml(fragment)
}

func (d *HTMLDocument) Remove(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel := d.find(selector)
	sel.Each(func(_ int, s *goquery.Selection) {
		d.forget(s.Get(0))
	})
	sel.Remove()
}

func (d *HTMLDocument) Text(selector string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(selector).First().Text()
}

func (d *HTMLDocument) SetText(selector, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel := d.find(selector)
	d.forgetChildren(sel)
	sel.SetText(text)
}

func (d *HTMLDocument) Attr(selector, name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(selector).First().Attr(name)
}

func (d *HTMLDocument) HasClass(selector, class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(selector).First().HasClass(class)
}

func (d *HTMLDocument) AddClass(selector, class string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.find(selector).AddClass(class)
}

func (d *HTMLDocument) RemoveClass(selector, class string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.find(selector).RemoveClass(class)
}

func (d *HTMLDocument) ToggleClass(selector, class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel := d.find(selector)
	sel.ToggleClass(class)
	return sel.First().HasClass(class)
}

func (d *HTMLDocument) Style(selector, property string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	style, _ := d.find(selector).First().Attr("style")
	for _, decl := range parseStyle(style) {
		if decl[0] == property {
			return decl[1]
		}
	}
	return ""
}

func (d *HTMLDocument) SetStyle(selector, property, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.find(selector).Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		decls := parseStyle(style)
		found := false
		for i := range decls {
			if decls[i][0] == property {
				decls[i][1] = value
				found = true
			}
		}
		if !found {
			decls = append(decls, [2]string{property, value})
		}
		s.SetAttr("style", formatStyle(decls))
	})
}

func (d *HTMLDocument) Disabled(selector string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.find(selector).First().Attr("disabled")
	return ok
}

func (d *HTMLDocument) SetDisabled(selector string, disabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel := d.find(selector)
	if disabled {
		sel.SetAttr("disabled", "")
		return
	}
	sel.RemoveAttr("disabled")
}

func (d *HTMLDocument) Value(selector string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	sel := d.find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if v, ok := d.values[sel.Get(0)]; ok {
		return v
	}
	return defaultValue(sel)
}

func (d *HTMLDocument) SetValue(selector, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.find(selector).Each(func(_ int, s *goquery.Selection) {
		d.values[s.Get(0)] = value
	})
}

func (d *HTMLDocument) ResetForm(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.find(selector).Find("input, textarea, select").Each(func(_ int, s *goquery.Selection) {
		delete(d.values, s.Get(0))
	})
}

// forgetChildren drops live values held by descendants of sel, which are
// about to be replaced.
func (d *HTMLDocument) forgetChildren(sel *goquery.Selection) {
	if len(d.values) == 0 {
		return
	}
	sel.Each(func(_ int, s *goquery.Selection) {
		for c := s.Get(0).FirstChild; c != nil; c = c.NextSibling {
			d.forget(c)
		}
	})
}

// forget drops live values held by n and its descendants.
func (d *HTMLDocument) forget(n *html.Node) {
	if len(d.values) == 0 {
		return
	}
	delete(d.values, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func defaultValue(sel *goquery.Selection) string {
	switch goquery.NodeName(sel) {
	case "textarea":
		return sel.Text()
	case "select":
		opt := sel.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = sel.Find("option").First()
		}
		if v, ok := opt.Attr("value"); ok {
			return v
		}
		return opt.Text()
	default:
		v, _ := sel.Attr("value")
		return v
	}
}

func parseStyle(style string) [][2]string {
	var decls [][2]string
	for _, part := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		decls = append(decls, [2]string{name, strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls [][2]string) string {
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		if decl[1] == "" {
			continue
		}
		parts = append(parts, decl[0]+": "+decl[1]+";")
	}
	return strings.Join(parts, " ")
}

// TabIssue describes a studio tab button without a panel or a panel without a button.
type TabIssue struct {
	Tab     string
	Problem string
}

var tabPanelID = regexp.MustCompile(`^([A-Za-z0-9_-]+)Tab$`)

// AuditTabs checks that every .studio-tab button has a matching #NAMETab
// panel and every .tab-content panel has a matching button.
func (d *HTMLDocument) AuditTabs() []TabIssue {
	d.mu.Lock()
	defer d.mu.Unlock()

	buttons := make(map[string]bool)
	panels := make(map[string]bool)
	d.find(".studio-tab[data-tab]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("data-tab")
		buttons[name] = true
	})
	d.find(".tab-content[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		if m := tabPanelID.FindStringSubmatch(id); m != nil {
			panels[m[1]] = true
		}
	})

	var issues []TabIssue
	for name := range buttons {
		if !panels[name] {
			issues = append(issues, TabIssue{Tab: name, Problem: "button has no #" + name + "Tab panel"})
		}
	}
	for name := range panels {
		if !buttons[name] {
			issues = append(issues, TabIssue{Tab: name, Problem: "panel has no .studio-tab button"})
		}
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Tab != issues[j].Tab {
			return issues[i].Tab < issues[j].Tab
		}
		return issues[i].Problem < issues[j].Problem
	})
	return issues
}
