package docsystem

import (
	models "branchwrite/internal/domain/models/docsystem"
)

// DeriveStats computes counters from a loaded project. Current sizes come
// from the stored metadata, not from re-analysing the body.
func DeriveStats(project *models.Project) *models.ProjectStats {
	stats := &models.ProjectStats{
		TotalCommits:          len(project.Commits),
		CurrentWordCount:      project.DocumentMetadata.WordCount,
		CurrentCharacterCount: project.DocumentMetadata.CharacterCount,
		CurrentLineCount:      project.DocumentMetadata.LineCount,
	}

	for _, c := range project.Commits {
		if c.IsAutoCommit {
			stats.AutoCommits++
		} else {
			stats.ManualCommits++
		}
	}

	return stats
}
