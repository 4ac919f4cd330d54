package topic

// Matcher finds the subscribed patterns matching a concrete topic using a
// trie keyed by segment. It is not safe for concurrent use; the bus that
// owns it is confined to one goroutine.
type Matcher struct {
	root *trieNode
}

type trieNode struct {
	children map[string]*trieNode
	patterns []Topic // patterns terminating at this node
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[string]*trieNode),
	}
}

// NewMatcher creates a new topic matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		root: newTrieNode(),
	}
}

// Add adds a pattern to the matcher. Adding the same pattern twice is a no-op.
func (m *Matcher) Add(pattern Topic) {
	if pattern == "" {
		return
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			node.children[seg] = newTrieNode()
		}
		node = node.children[seg]
	}

	for _, p := range node.patterns {
		if p == pattern {
			return
		}
	}
	node.patterns = append(node.patterns, pattern)
}

// Remove removes a pattern from the matcher.
func (m *Matcher) Remove(pattern Topic) {
	if pattern == "" {
		return
	}

	node := m.root
	for _, seg := range pattern.Segments() {
		if node.children[seg] == nil {
			return
		}
		node = node.children[seg]
	}

	for i, p := range node.patterns {
		if p == pattern {
			node.patterns = append(node.patterns[:i], node.patterns[i+1:]...)
			return
		}
	}
}

// Has returns true if the pattern exists in the matcher.
func (m *Matcher) Has(pattern Topic) bool {
	for _, p := range m.Patterns() {
		if p == pattern {
			return true
		}
	}
	return false
}

// Match returns every pattern that matches the given topic, each at most once.
// The topic should not contain wildcards.
func (m *Matcher) Match(eventTopic Topic) []Topic {
	if eventTopic == "" {
		return nil
	}

	var matches []Topic
	seen := make(map[Topic]struct{})
	m.matchRecursive(m.root, eventTopic.Segments(), 0, seen, &matches)
	return matches
}

func (m *Matcher) matchRecursive(node *trieNode, segments []string, depth int, seen map[Topic]struct{}, matches *[]Topic) {
	if node == nil {
		return
	}

	if depth == len(segments) {
		for _, p := range node.patterns {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				*matches = append(*matches, p)
			}
		}
		// ** at the end can match zero segments
		if child := node.children[WildcardMulti]; child != nil {
			m.matchRecursive(child, segments, depth, seen, matches)
		}
		return
	}

	if child := node.children[segments[depth]]; child != nil {
		m.matchRecursive(child, segments, depth+1, seen, matches)
	}

	if child := node.children[WildcardSingle]; child != nil {
		m.matchRecursive(child, segments, depth+1, seen, matches)
	}

	if child := node.children[WildcardMulti]; child != nil {
		for i := depth; i <= len(segments); i++ {
			m.matchRecursive(child, segments, i, seen, matches)
		}
	}
}

// Patterns returns all patterns in the matcher.
func (m *Matcher) Patterns() []Topic {
	var patterns []Topic
	collectPatterns(m.root, &patterns)
	return patterns
}

func collectPatterns(node *trieNode, patterns *[]Topic) {
	*patterns = append(*patterns, node.patterns...)
	for _, child := range node.children {
		collectPatterns(child, patterns)
	}
}

// Count returns the number of patterns in the matcher.
func (m *Matcher) Count() int {
	return len(m.Patterns())
}

// Clear removes all patterns from the matcher.
func (m *Matcher) Clear() {
	m.root = newTrieNode()
}
