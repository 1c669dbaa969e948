/*
Package ports defines the driven ports (interfaces) of algoscope.

These interfaces decouple the core from external implementations, allowing
editor workspaces and scenarios to live in memory, Redis or a Loam vault.

# Key Interfaces

  - WorkspaceStore: persists editor workspaces between sessions.
  - DistributedLocker: serializes concurrent edits of one workspace across replicas.
  - ScenarioLibrary: read-only catalogue of named algorithm inputs.
*/
package ports
