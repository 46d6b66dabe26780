// Package screenshot lets a test running in a browser ask an external
// process to capture the page.
//
// The request travels through the text content of the #__wbgtest_screenshot
// element. The test writes a path relative to the project root and then polls
// every 50ms until the element is empty again. The external observer watches
// the element, saves a screenshot under that path and clears the element to
// acknowledge. This side never clears the element itself.
package screenshot
