/*
Package ports defines the driven ports (interfaces) that decouple the
composition core from external implementations.

The core itself performs no I/O; storage backends and transports plug in
behind these interfaces.

# Key Interfaces

  - Catalog: persists and retrieves named timelines (memory, file, redis).
*/
package ports
