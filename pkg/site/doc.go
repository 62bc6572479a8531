// Package site holds the immutable site configuration: company details,
// carousel slides and policies, the chatbot graph, testimonials, FAQs,
// service centers and legal copy.
//
// A Site is built once at startup from YAML and injected wherever content is needed.
package site
