// Package observer implements the capturing side of the screenshot protocol.
//
// An Observer watches the #__wbgtest_screenshot element of a page. When a
// test writes a path into it, the observer captures the page, saves the image
// at that path under the project root and clears the element, which the test
// takes as the acknowledgement.
//
// Pages are reached through page.Document, so the same observer drives a real
// browser (PlaywrightDocument) or an in-memory page in tests.
package observer
