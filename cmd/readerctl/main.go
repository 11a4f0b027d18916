// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command readerctl inspects and edits the reader's persisted library from the
// terminal. It reads the same environment as the server.
package main

import "github.com/taibuivan/yomira-reader/internal/cli"

func main() {
	cli.Execute()
}
