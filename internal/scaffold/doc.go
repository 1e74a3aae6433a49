// Package scaffold turns a Request (project name plus template) into a project
// tree on disk. It validates everything it can before touching the
// filesystem, then runs the template's steps strictly in order: directory
// creation, external generator and package-manager calls, and config
// patches. The first failing external command ends the run and its exit code
// becomes the process exit code. Nothing is rolled back.
package scaffold
