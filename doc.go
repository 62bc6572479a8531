/*
Package vitrine serves the marketing site of a machinery manufacturer: a product
catalog, a service-center locator, FAQs, and two interactive widgets driven by
server-side engines.

# Concept

Vitrine keeps the interactive state of every visitor on the server. Each widget
is an engine with injected time, so its behavior is reproducible in tests and
identical across adapters (HTTP pages, terminal chat, MCP tools).

  - Carousel Engine: rotating slides with auto-advance, pause on interaction and
    a debounced resume. See package carousel.
  - Scripted Dialogue Engine: a chatbot that walks a graph of prompts and options,
    with typing delays and side effects such as opening a form or a phone dialer.
    See package dialogue.

Site content (company details, slides, the chatbot script, service centers)
is a YAML document; the catalog is a JSON file normalized on read.

# Usage

	app, err := vitrine.New(vitrine.WithSiteFile("site.yaml"))
	if err != nil {
		log.Fatal(err)
	}
	srv, err := app.HTTPServer()
	if err != nil {
		log.Fatal(err)
	}
	defer srv.Close()
	log.Fatal(http.ListenAndServe(":8080", srv.Handler()))

Hosts embedding a single widget can create engines directly:

	chat := app.NewChat(ports.EffectHandlerFunc(openInBrowser))
	_ = chat.Start()
*/
package vitrine
