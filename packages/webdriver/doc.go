// Package webdriver creates and quits browser sessions.
//
// Remote talks to a W3C WebDriver endpoint such as a Selenium grid. Local
// keeps in-memory sessions and is used when no endpoint is configured, so
// suites whose hooks only run shell commands can still exercise driver
// substitution.
package webdriver
