// Package cli implements the kira command-line interface.
//
// # Overview
//
// kira inspects an Android device over adb: identity and state snapshots,
// performance profiles, processes, files, packages, and logs. Every command
// talks to one device, selected with --serial or ANDROID_SERIAL.
//
// # Commands
//
// info - Capture a device snapshot:
//
//	kira info [--output FILE] [--format yaml|json|table]
//
// perf - Capture memory, battery, CPU, frame, and uptime figures:
//
//	kira perf --format json
//
// ps, ls, mounts, df, root - Processes, directory listings, mounts,
// filesystem usage, and root access:
//
//	kira ps --package com.example.app
//	kira ls /sdcard/Download --format table
//
// apps - Installed packages:
//
//	kira apps list --filter third-party
//	kira apps info com.example.app
//	kira apps perms com.example.app
//	kira apps top
//
// logcat - Device logs:
//
//	kira logcat stream --buffer crash --level W --tag ActivityManager
//	kira logcat dump --lines 200 --grep ANR --format json
//	kira logcat clear --buffer main
//	kira logcat buffers
//
// # Global Flags
//
//	--serial, -s   Device serial (KIRA_SERIAL, ANDROID_SERIAL)
//	--adb          adb binary (KIRA_ADB)
//	--config       Config file (default: $HOME/.kira.yaml)
//	--log-level    debug, info, warn, error (LOG_LEVEL)
//	--concurrency  Snapshot queries run at once
//	--timeout      Per-command timeout
//	--rate         Commands per second, 0 for unlimited
//
// Flags override environment variables, which override the config file.
//
// # Output Formats
//
// Structured commands take --format yaml (default), json, or table and
// --output FILE. logcat stream prints text or JSON lines; logcat dump
// accepts text as well as the structured formats.
//
// # Exit Codes
//
//	0  Success, including a log stream stopped with Ctrl-C
//	1  General error (invalid arguments, device failure)
//	2  Context canceled or timeout
package cli
