// Package catalog loads and normalizes the static product catalog.
//
// The catalog is a JSON array of product records. Records are normalized on read:
// a missing image list becomes the placeholder image, a missing or non-numeric
// price becomes zero and a missing id is derived from the product name.
// Spec categories keep the order in which they appear in the document.
package catalog
