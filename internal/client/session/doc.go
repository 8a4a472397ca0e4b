// Package session owns the authenticated identity of the client.
//
// Session is the shared, read-only view injected into the gateway and the
// resource stores. All writes go through Manager, which implements login,
// registration, logout, boot-time restore and credential renewal, and
// keeps the durable copy in storage in step with memory.
package session
