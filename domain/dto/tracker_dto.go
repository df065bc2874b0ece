package dto

// TrackerRunStats summarizes one tracker cycle.
type TrackerRunStats struct {
	ChallengesChecked int `json:"challengesChecked"`
	VideosDetected    int `json:"videosDetected"`
	UploadsRecorded   int `json:"uploadsRecorded"`
	MissedUploads     int `json:"missedUploads"`
}

// TrackerRunResponse is the body returned by the job trigger endpoint.
type TrackerRunResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Stats   TrackerRunStats `json:"stats"`
}
