// Package net defines the transport contract between a servo handle and the
// field bus carrying register traffic.
//
// Network is the abstract transport: raw register reads and writes addressed
// by node and register address, plus asynchronous status word and emergency
// code subscriptions. Concrete transports (serial, Ethernet) implement it;
// Loopback is the in-memory implementation used by tests and tooling.
//
// A Network value is shared: several servo handles may use the same network
// concurrently. Callers close the network once, after all servos built on it
// have been closed.
package net
