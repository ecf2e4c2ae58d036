package corpus

import (
	"fmt"
	"os"
)

// FAQSourceTag tags every FAQ chunk; the corpus is a concatenation of all
// configured documents, so chunks do not track their individual file.
const FAQSourceTag = "faq_chunk"

// LoadFAQText reads each FAQ document and combines them with a blank-line
// separator. A missing file is fatal rather than skipped.
func LoadFAQText(paths []string) (string, error) {
	docs := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("faq document %s: %w", path, err)
		}
		docs = append(docs, string(data))
	}
	return JoinDocuments(docs), nil
}
