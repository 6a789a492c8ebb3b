// Package config resolves what the viewer needs from an Android project.
//
// # Resolution
//
// Resolve follows this order:
//
//  1. An explicitly given log file path always wins.
//  2. Otherwise the newest *.log file in <project>/.droidtail/logs is
//     used, that being the directory the capture wrapper streams
//     `adb logcat` into.
//  3. No candidate at all is an error; the viewer refuses to start
//     without a file to follow.
//
// # Application id discovery
//
// AppID scans the project's Gradle build files (app/build.gradle,
// app/build.gradle.kts, then the root build.gradle variants) for the
// first applicationId assignment. Discovery is best effort: a missing
// file or absent assignment yields "", which leaves the package filter
// disabled at startup instead of blanking the view.
package config
