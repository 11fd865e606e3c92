package europarl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferReference(t *testing.T) {
	// Reference embedded in the label wins
	assert.Equal(t, "A9-0123/2024", InferReference("Report A9-0123/2024 on something", "eli/dl/doc/A-9-2024-0123"))
	assert.Equal(t, "2024/0123(COD)", InferReference("Procedure 2024/0123(COD)", "whatever"))

	// No usable label: derive from the id's trailing segment
	assert.Equal(t, "2024/0123", InferReference("Untitled", "eli/dl/proc/2024-0123"))

	// Unparseable everything still yields the segment
	assert.Equal(t, "opaque", InferReference("", "path/opaque"))
}

func TestReferenceShapes(t *testing.T) {
	assert.True(t, IsDocumentReference("A9-0123/2024"))
	assert.True(t, IsDocumentReference("B10-7/2025"))
	assert.False(t, IsDocumentReference("2024/0123(COD)"))

	assert.True(t, IsProcedureReference("2024/0123(COD)"))
	assert.True(t, IsProcedureReference("2025/2001(INI)"))
	assert.False(t, IsProcedureReference("A9-0123/2024"))
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "A-9-2024-0123", documentID("A9-0123/2024"))
	// Short numbers are zero-padded
	assert.Equal(t, "B-10-2025-0007", documentID("B10-7/2025"))
	assert.Equal(t, "", documentID("2024/0123(COD)"))
}

func TestProcedureID(t *testing.T) {
	assert.Equal(t, "2024-0123", procedureID("2024/0123(COD)"))
	// Non-matching references degrade to a filesystem-safe transliteration
	assert.Equal(t, "2024_0123", procedureID("2024/0123"))
}

func TestTypeFromReference(t *testing.T) {
	assert.Equal(t, "Report", typeFromReference("A9-0123/2024"))
	assert.Equal(t, "Resolution", typeFromReference("B10-7/2025"))
	assert.Equal(t, "Communication", typeFromReference("C9-0001/2024"))
	assert.Equal(t, "Codecision", typeFromReference("2024/0123(COD)"))
	assert.Equal(t, "Adopted", typeFromReference("xyz"))
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "1st Reading", stageLabel("http://publications.europa.eu/resource/authority/procedure-phase/RDG1"))
	assert.Equal(t, "Completed", stageLabel("http://publications.europa.eu/resource/authority/procedure-phase/FIN"))
	// Unknown and empty stages read as still moving
	assert.Equal(t, "In Progress", stageLabel("something-else"))
	assert.Equal(t, "In Progress", stageLabel(""))
}

func TestProcedureTypeLabel(t *testing.T) {
	assert.Equal(t, "Codecision", procedureTypeLabel("def/ep-procedure-types/COD"))
	assert.Equal(t, "Procedure", procedureTypeLabel(""))
	// Unknown types degrade to their last path segment
	assert.Equal(t, "XYZ", procedureTypeLabel("def/ep-procedure-types/XYZ"))
}

func TestProcedureURL(t *testing.T) {
	url := procedureURL("2024/0123(COD)")
	assert.Contains(t, url, "oeil.secure.europarl.europa.eu")
	assert.Contains(t, url, "reference=")
}
