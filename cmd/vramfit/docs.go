package main

// General API documentation for swaggo. Run `swag init -g cmd/vramfit/docs.go -o docs` to regenerate.
//
// @title           vramfit API
// @version         1.0
// @description     Ranks local LLM variants by estimated VRAM fit and community signals.
//
// @contact.name   vramfit maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
