package config

import "time"

// Base application details
const AppName = "compedit"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "compedit.log"
const SchemesDirName = "schemes"

// Status Bar
const MessageTimeout = 4 * time.Second

// Defaults for the [editor] and [generator] tables
const DefaultMaxHistory = 100
const DefaultMergeWindowMS = 500
const DefaultLiteralLineLength = 100
const DefaultClassName = "NewComponent"
const SystemClipboard = true
