package catalog

import "github.com/egementunca/ID-Circuit/store"

func getCircuit(txn store.Txn, fingerprint string) (CircuitRecord, error) {
	raw, err := txn.Get(tableCircuits, fingerprint)
	if err != nil {
		return CircuitRecord{}, err
	}
	var rec CircuitRecord
	return rec, decode(raw, &rec)
}

func putCircuit(txn store.Txn, rec CircuitRecord) error {
	raw, err := encode(rec)
	if err != nil {
		return err
	}
	return txn.Put(tableCircuits, rec.Fingerprint, raw)
}

func getDimGroup(txn store.Txn, id string) (DimGroupRecord, error) {
	raw, err := txn.Get(tableDimGroups, id)
	if err != nil {
		return DimGroupRecord{}, err
	}
	var rec DimGroupRecord
	return rec, decode(raw, &rec)
}

func putDimGroup(txn store.Txn, rec DimGroupRecord) error {
	raw, err := encode(rec)
	if err != nil {
		return err
	}
	return txn.Put(tableDimGroups, rec.ID, raw)
}

func bumpDimGroupCount(txn store.Txn, dimGroupID string) error {
	raw, err := txn.Get(tableDimGroups, dimGroupID)
	var rec DimGroupRecord
	if err == nil {
		if derr := decode(raw, &rec); derr != nil {
			return derr
		}
	}
	rec.ID = dimGroupID
	rec.CircuitCount++
	return putDimGroup(txn, rec)
}

func putRepresentative(txn store.Txn, rec RepresentativeRecord) error {
	raw, err := encode(rec)
	if err != nil {
		return err
	}
	return txn.Put(tableRepresentatives, rec.ID, raw)
}

func getRepIndex(txn store.Txn, key string) ([]string, error) {
	raw, err := txn.Get(tableRepIndex, key)
	if err != nil {
		return nil, err
	}
	var ids []string
	return ids, decode(raw, &ids)
}

func putRepIndex(txn store.Txn, key string, ids []string) error {
	raw, err := encode(ids)
	if err != nil {
		return err
	}
	return txn.Put(tableRepIndex, key, raw)
}

func putEquivalent(txn store.Txn, rec EquivalentRecord) error {
	raw, err := encode(rec)
	if err != nil {
		return err
	}
	return txn.Put(tableEquivalents, rec.RepresentativeID+"|"+rec.CircuitID, raw)
}
