package strapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type EntriesService service

// List fetches entries of a collection, optionally constrained by a
// query. Records and pagination metadata stay opaque JSON.
func (s *EntriesService) List(uid string, query *Query) (*EntryList, error) {
	collection, err := collectionFromUID(uid)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf(pathCollection, collection)
	body, err := s.client.get(path, encodeQuery(query.Params()))
	if err != nil {
		return nil, readErr(err)
	}

	list := &EntryList{}
	if err := json.Unmarshal(body, list); err != nil {
		return nil, fmt.Errorf("%w: malformed entries response: %s", ErrBackend, err.Error())
	}
	return list, nil
}

// Get fetches a single entry, unwrapped from the data envelope.
func (s *EntriesService) Get(uid string, entryID string) (json.RawMessage, error) {
	collection, err := collectionFromUID(uid)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf(pathEntry, collection, entryID)
	body, err := s.client.get(path, nil)
	if err != nil {
		return nil, readErr(err)
	}
	return unwrapEntry(body)
}

// Create posts a new entry. The payload is wrapped in the backend's data
// envelope on the wire; the created record comes back unwrapped.
func (s *EntriesService) Create(uid string, data map[string]interface{}) (json.RawMessage, error) {
	collection, err := collectionFromUID(uid)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf(pathCollection, collection)
	body, err := s.client.post(path, bytes.NewBuffer(payload))
	if err != nil {
		return nil, writeErr(err)
	}
	return unwrapEntry(body)
}

// Update puts changed fields of an existing entry.
func (s *EntriesService) Update(uid string, entryID string, data map[string]interface{}) (json.RawMessage, error) {
	collection, err := collectionFromUID(uid)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]interface{}{"data": data})
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf(pathEntry, collection, entryID)
	body, err := s.client.put(path, bytes.NewBuffer(payload))
	if err != nil {
		return nil, writeErr(err)
	}
	return unwrapEntry(body)
}

// Delete removes an entry. The backend returns no body.
func (s *EntriesService) Delete(uid string, entryID string) error {
	collection, err := collectionFromUID(uid)
	if err != nil {
		return err
	}

	path := fmt.Sprintf(pathEntry, collection, entryID)
	if _, err := s.client.delete(path); err != nil {
		return writeErr(err)
	}
	return nil
}

func unwrapEntry(body []byte) (json.RawMessage, error) {
	var envelope entryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed entry response: %s", ErrBackend, err.Error())
	}
	if envelope.Data != nil {
		return envelope.Data, nil
	}
	return body, nil
}
