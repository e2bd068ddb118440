// Package platformstatusservice aggregates health and usage figures from the
// fundraising and broadcast contexts. It owns no state of its own; the
// composition root hands it read-only sources and the module exposes the
// health and stats endpoints over them.
package platformstatusservice
