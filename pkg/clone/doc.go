// Package clone implements the core cargo-clone workflow: turning a
// package spec into a concrete acquisition action and executing it.
//
// # Overview
//
// A clone request names a crate, optionally constrains its version, and
// optionally fixes the acquisition method. Resolution proceeds in three
// steps:
//
//   - Method resolution: the requested method (or auto-detection against
//     the crate's declared repository URL) yields a terminal [Decision] —
//     either the crate archive or a [Target] naming a VCS tool and clone
//     URL. MethodAuto is a request-only value and cannot reach execution.
//   - Version resolution: [SelectVersion] matches a semver constraint
//     against the registry's published version list and picks the maximum.
//   - Acquisition: [Extract] unpacks the downloaded archive, enforcing the
//     `{name}-{version}` entry prefix, or a [Runner] spawns the VCS tool
//     with `clone <location>` plus any pass-through arguments.
//
// [Cloner] wires the three together around a registry client and a
// hosting detector. The effectful leaves (network, filesystem, processes)
// sit behind the Registry, Detector, and Runner interfaces so that the
// decision logic stays pure and unit-testable.
//
// All failures are fatal to the invocation and carry their cause chain;
// nothing is retried and there is no partial-success recovery. A failure
// midway through extraction or a VCS clone leaves the destination
// directory in whatever state the underlying operation reached.
package clone
