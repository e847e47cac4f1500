// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchclean

import (
	"strconv"
	"strings"
)

// Locality says whether a node shares a rack with the node it
// measured the network against.
type Locality int

const (
	// Unknown is the locality of a node whose name follows none of
	// the known naming schemes.
	Unknown Locality = iota
	Local
	Remote
)

func (l Locality) String() string {
	switch l {
	case Local:
		return "local"
	case Remote:
		return "remote"
	}
	return "unknown"
}

// IsRackLocal classifies a node by its ID.
//
//	clnodeNNN     local if 40 < NNN < 97
//	c220g1-0306NN local if NN <= 20
//	c220*         remote otherwise
//	ms09*         local
//	ms*           remote otherwise
//
// The node number is formed by the trailing digits of the last three
// (clnode) or two (c220g1) characters of the ID, so "clnode50" and
// "clnode050" are the same node. An ID whose number has no digits is
// Unknown.
func IsRackLocal(nodeid string) Locality {
	switch {
	case strings.Contains(nodeid, "clnode"):
		n, ok := suffixNumber(nodeid, 3)
		if !ok {
			return Unknown
		}
		return localIf(n > 40 && n < 97)

	case strings.Contains(nodeid, "c220"):
		if !strings.Contains(nodeid, "c220g1-0306") {
			return Remote
		}
		n, ok := suffixNumber(nodeid, 2)
		if !ok {
			return Unknown
		}
		return localIf(n <= 20)

	case strings.Contains(nodeid, "ms"):
		return localIf(strings.Contains(nodeid, "ms09"))
	}
	return Unknown
}

func localIf(local bool) Locality {
	if local {
		return Local
	}
	return Remote
}

// suffixNumber parses the digits that end the last width bytes of s.
func suffixNumber(s string, width int) (int, bool) {
	if len(s) > width {
		s = s[len(s)-width:]
	}
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s[i:])
	return n, err == nil
}
