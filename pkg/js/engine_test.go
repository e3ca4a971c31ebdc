package js

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"ukechug/pkg/html"
)

func parseHTML(t *testing.T, s string) *html.Document {
	t.Helper()
	doc, err := html.Parse(s)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

func TestGetElementById(t *testing.T) {
	doc := parseHTML(t, `<div id="foo">hello</div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("foo");
		if (el === null) throw new Error("element not found");
		if (el.id !== "foo") throw new Error("wrong id: " + el.id);
		if (el.tagName !== "DIV") throw new Error("wrong tagName: " + el.tagName);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestGetElementByIdNotFound(t *testing.T) {
	doc := parseHTML(t, `<div>hello</div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("nonexistent");
		if (el !== null) throw new Error("expected null, got: " + el);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestGetElementsByTagName(t *testing.T) {
	doc := parseHTML(t, `<p>one</p><p>two</p><div>three</div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		var ps = document.getElementsByTagName("p");
		if (ps.length !== 2) throw new Error("expected 2 p tags, got: " + ps.length);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestGetElementsByClassName(t *testing.T) {
	doc := parseHTML(t, `<div class="a b">one</div><div class="a">two</div><div class="c">three</div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		var els = document.getElementsByClassName("a");
		if (els.length !== 2) throw new Error("expected 2 elements with class a, got: " + els.length);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestSetTextContent(t *testing.T) {
	doc := parseHTML(t, `<p id="target">original</p>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		document.getElementById("target").textContent = "changed";
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	node := getElementById(doc.Root, "target")
	if node == nil {
		t.Fatal("target not found")
	}
	got := node.TextContent()
	if got != "changed" {
		t.Errorf("textContent = %q, want %q", got, "changed")
	}
}

func TestSetAttribute(t *testing.T) {
	doc := parseHTML(t, `<div id="target">text</div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("target");
		el.setAttribute("data-value", "42");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	node := getElementById(doc.Root, "target")
	if val, ok := node.Attributes["data-value"]; !ok || val != "42" {
		t.Errorf("data-value = %q, want %q", val, "42")
	}
}

func TestGetAttribute(t *testing.T) {
	doc := parseHTML(t, `<div id="target" data-x="hello">text</div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("target");
		var val = el.getAttribute("data-x");
		if (val !== "hello") throw new Error("getAttribute returned: " + val);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestSetClassName(t *testing.T) {
	doc := parseHTML(t, `<div id="target" class="old">text</div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		document.getElementById("target").className = "new-class";
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	node := getElementById(doc.Root, "target")
	if node.Attributes["class"] != "new-class" {
		t.Errorf("class = %q, want %q", node.Attributes["class"], "new-class")
	}
}

func TestChildren(t *testing.T) {
	doc := parseHTML(t, `<div id="parent"><span>a</span><span>b</span></div>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		var kids = document.getElementById("parent").children;
		if (kids.length !== 2) throw new Error("expected 2 children, got: " + kids.length);
		if (kids[0].tagName !== "SPAN") throw new Error("expected SPAN, got: " + kids[0].tagName);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestScriptError(t *testing.T) {
	doc := parseHTML(t, `<p>text</p>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `throw new Error("test error");`)
	err := engine.Execute(doc)
	if err == nil {
		t.Fatal("expected error from script")
	}
}

func TestScriptExtraction(t *testing.T) {
	doc := parseHTML(t, `<p>text</p><script>var x = 1;</script><script>var y = 2;</script>`)
	if len(doc.Scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(doc.Scripts))
	}
	if doc.Scripts[0] != "var x = 1;" {
		t.Errorf("script 0 = %q", doc.Scripts[0])
	}
	if doc.Scripts[1] != "var y = 2;" {
		t.Errorf("script 1 = %q", doc.Scripts[1])
	}
}

func TestScriptErrorDoesNotStopLaterScripts(t *testing.T) {
	doc := parseHTML(t, `<p id="target">text</p>`)
	engine := New()
	doc.Scripts = append(doc.Scripts,
		`undefinedFunction();`,
		`document.getElementById("target").className = "ran";`,
	)
	err := engine.Execute(doc)
	if err == nil || !strings.Contains(err.Error(), "script 0") {
		t.Fatalf("expected script 0 error, got %v", err)
	}
	if doc.Root.HasClass("ran") == false {
		t.Error("second script should still run")
	}
}

func TestConsoleRoutesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	doc := parseHTML(t, `<p>text</p>`)
	doc.Scripts = append(doc.Scripts, `console.log("hello", 42); console.warn("careful");`)

	if err := New(WithLogger(logger)).Execute(doc); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello 42") {
		t.Errorf("log output missing console.log text: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "careful") {
		t.Errorf("log output missing warning: %q", out)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	doc := parseHTML(t, `<p>text</p>`)
	doc.Scripts = append(doc.Scripts, `for (;;) {}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New().ExecuteContext(ctx, doc)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDocumentElementAndBody(t *testing.T) {
	doc := parseHTML(t, `<html><body><p id="x">text</p></body></html>`)
	engine := New()
	doc.Scripts = append(doc.Scripts, `
		if (document.documentElement.tagName !== "HTML") throw new Error("documentElement: " + document.documentElement.tagName);
		if (document.body === null) throw new Error("body not found");
		if (document.getElementById("x").parentElement !== document.body) throw new Error("parent should be body");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	noBody := parseHTML(t, `<div></div>`)
	noBody.Scripts = append(noBody.Scripts, `if (document.body !== null) throw new Error("expected null body");`)
	if err := New().Execute(noBody); err != nil {
		t.Fatal(err)
	}
}

func TestScriptsChangeTheTree(t *testing.T) {
	doc := parseHTML(t, `<div id="list"></div>`)
	doc.Scripts = append(doc.Scripts, `
		var list = document.getElementById("list");
		for (var i = 0; i < 3; i++) {
			var item = document.createElement("p");
			item.classList.add("item");
			item.textContent = "item " + i;
			list.appendChild(item);
		}
	`)
	if err := New().Execute(doc); err != nil {
		t.Fatal(err)
	}
	items := getElementsByClassName(doc.Root, "item")
	if len(items) != 3 || items[2].TextContent() != "item 2" {
		t.Fatalf("unexpected items: %d", len(items))
	}
	if _, ok := items[0].Parent.ID(); !ok {
		t.Error("items should be attached under #list")
	}
}
