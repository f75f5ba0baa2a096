// Package services holds the client core: the session store, the profile
// store, the watchlist and continue-watching synchronizers, and the App that
// wires them together.
//
// Data flows one way. A session identity change makes the profile store
// refetch or clear its list; a current-profile change makes both
// synchronizers reset and refetch. Writes go the other way: a local
// optimistic patch, then the remote call, with the store's rows as the
// source of truth on the next refetch.
//
// Every fetch is tagged with a generation number taken when it is issued.
// A response whose generation is no longer the latest when it arrives is
// dropped, so a slow reply for an old profile never overwrites newer state.
package services
