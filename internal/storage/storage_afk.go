package storage

import "time"

const afkKey = "afk"

// AFKRecord marks a user as away with an optional message.
type AFKRecord struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	SinceMs int64  `json:"since_ms"`
}

// Since returns the time the user went AFK.
func (r AFKRecord) Since() time.Time {
	return time.UnixMilli(r.SinceMs)
}

func (s *Storage) afkRecords() (map[string]AFKRecord, error) {
	data, exists := s.ds.Get(afkKey)
	if !exists {
		return map[string]AFKRecord{}, nil
	}

	records := map[string]AFKRecord{}
	if err := decode(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetAFK marks a user as away.
func (s *Storage) SetAFK(userID, message string, since time.Time) error {
	records, err := s.afkRecords()
	if err != nil {
		return err
	}

	records[userID] = AFKRecord{
		UserID:  userID,
		Message: message,
		SinceMs: since.UnixMilli(),
	}
	s.ds.Add(afkKey, records)
	return nil
}

// AFK returns the user's AFK record, if any.
func (s *Storage) AFK(userID string) (*AFKRecord, bool, error) {
	records, err := s.afkRecords()
	if err != nil {
		return nil, false, err
	}

	record, ok := records[userID]
	if !ok {
		return nil, false, nil
	}
	return &record, true, nil
}

// ClearAFK removes the user's AFK record and returns what it was.
func (s *Storage) ClearAFK(userID string) (*AFKRecord, bool, error) {
	records, err := s.afkRecords()
	if err != nil {
		return nil, false, err
	}

	record, ok := records[userID]
	if !ok {
		return nil, false, nil
	}

	delete(records, userID)
	s.ds.Add(afkKey, records)
	return &record, true, nil
}
