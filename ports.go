package canvas

import "strings"

// pairedPortKey extracts the pair-key embedded in name, recognizing both the
// current "__pair:" prefix and the legacy "__paired:" prefix (read-only;
// converted to the current prefix wherever a name is rewritten).
func pairedPortKey(name string) (key string, ok bool) {
	if strings.HasPrefix(name, PairedProducerPrefix) {
		return strings.TrimPrefix(name, PairedProducerPrefix), true
	}
	if strings.HasPrefix(name, LegacyPairedProducerPrefix) {
		return strings.TrimPrefix(name, LegacyPairedProducerPrefix), true
	}
	return "", false
}

// isPairedProducerPort reports whether port is a paired producer: role
// Producer and a name carrying a pair key.
func isPairedProducerPort(port *CanvasPort) bool {
	if port.Role != RoleProducer {
		return false
	}
	_, ok := pairedPortKey(port.Name)
	return ok
}

// normalizePairedPortNames rewrites every legacy-prefixed port name on block
// to the current prefix, in place. Used once after JSON deserialization of
// an older document.
func normalizePairedPortNames(block *Block) {
	for _, p := range block.ports {
		if key, ok := pairedPortKey(p.Name); ok && strings.HasPrefix(p.Name, LegacyPairedProducerPrefix) {
			p.Name = PairedProducerPrefix + key
		}
	}
}

// ensureOppositeProducerPort mirrors a non-producer port into a paired
// producer on the opposite side at the same T. The pair key is the
// consumer port's own id string, which makes the operation naturally
// idempotent and lets a legacy producer already keyed that way be reused
// instead of minting a new port (the two candidate policies, "reuse a
// legacy producer keyed by the consumer's id-string" and "mint a fresh pair
// key", collapse into one idempotent rule once the key is derived from the
// consumer's own id).
// Returns the producer port's id and whether it was newly created.
func ensureOppositeProducerPort(doc *Document, block *Block, consumer *CanvasPort) (PortId, bool) {
	if block == nil || consumer == nil || !block.AutoOppositeProducerPort || consumer.Role == RoleProducer {
		return NilPortId, false
	}

	key, ok := pairedPortKey(consumer.Name)
	if !ok {
		key = consumer.ID.String()
	}
	wantName := PairedProducerPrefix + key
	opposite := consumer.Side.Opposite()

	for _, p := range block.ports {
		if !isPairedProducerPort(p) {
			continue
		}
		k, _ := pairedPortKey(p.Name)
		if k != key || p.Side != opposite || p.T != consumer.T {
			continue
		}
		if p.Name != wantName {
			p.Name = wantName
		}
		if consumer.Name != wantName {
			consumer.Name = wantName
		}
		return p.ID, false
	}

	consumer.Name = wantName
	id := block.AddPort(opposite, consumer.T, RoleProducer, wantName)
	if doc != nil {
		doc.emitChanged()
	}
	return id, true
}

// removeOppositeProducerPort removes the paired producer port for consumer,
// provided it has zero wire attachments in doc. Returns the removed port's
// index and value (for undo) and whether a removal happened.
func removeOppositeProducerPort(doc *Document, block *Block, consumer *CanvasPort) (int, *CanvasPort, bool) {
	key, ok := pairedPortKey(consumer.Name)
	if !ok {
		return 0, nil, false
	}
	opposite := consumer.Side.Opposite()

	for _, p := range block.ports {
		if !isPairedProducerPort(p) {
			continue
		}
		k, _ := pairedPortKey(p.Name)
		if k != key || p.Side != opposite {
			continue
		}
		if doc != nil {
			ref := PortRef{ItemID: block.id, PortID: p.ID}
			for _, w := range doc.wires() {
				if _, attached := w.AttachesToPort(ref); attached {
					return 0, nil, false
				}
			}
		}
		idx, removed, ok := block.RemovePort(p.ID)
		if ok && doc != nil {
			doc.emitChanged()
		}
		return idx, removed, ok
	}
	return 0, nil, false
}
