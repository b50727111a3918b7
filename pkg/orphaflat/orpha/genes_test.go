package orpha

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genesXML = `<?xml version="1.0" encoding="UTF-8"?>
<JDBOR>
  <DisorderList count="1">
    <Disorder id="17601">
      <OrphaCode>166024</OrphaCode>
      <Name lang="en">Multiple epiphyseal dysplasia, Al-Gazali type</Name>
      <ExpertLink lang="en">http://example.org/166024</ExpertLink>
      <DisorderType><Name lang="en">Disease</Name></DisorderType>
      <DisorderGroup><Name lang="en">Disorder</Name></DisorderGroup>
      <DisorderGeneAssociationList count="3">
        <DisorderGeneAssociation>
          <SourceOfValidation>22587682[PMID]</SourceOfValidation>
          <Gene id="20160">
            <Name lang="en">kinesin family member 7</Name>
            <Symbol>KIF7</Symbol>
            <SynonymList count="2">
              <Synonym lang="en">JBTS12</Synonym>
              <Synonym lang="en">UNC51.4</Synonym>
            </SynonymList>
            <GeneType id="25993"><Name lang="en">gene with protein product</Name></GeneType>
            <ExternalReferenceList count="3">
              <ExternalReference><Source>HGNC</Source><Reference>30497</Reference></ExternalReference>
              <ExternalReference><Source>OMIM</Source><Reference>611254</Reference></ExternalReference>
              <ExternalReference><Source>FooDB</Source><Reference>xyz</Reference></ExternalReference>
            </ExternalReferenceList>
            <LocusList count="1">
              <Locus id="15859">
                <GeneLocus>15q26.1</GeneLocus>
                <LocusKey>1</LocusKey>
              </Locus>
            </LocusList>
          </Gene>
          <DisorderGeneAssociationType><Name lang="en">Disease-causing germline mutation(s) in</Name></DisorderGeneAssociationType>
          <DisorderGeneAssociationStatus><Name lang="en">Assessed</Name></DisorderGeneAssociationStatus>
        </DisorderGeneAssociation>
        <DisorderGeneAssociation>
          <SourceOfValidation>missing gene</SourceOfValidation>
        </DisorderGeneAssociation>
        <DisorderGeneAssociation>
          <Gene id="20161">
            <Name lang="en">second gene</Name>
            <Symbol>ABC1</Symbol>
          </Gene>
          <DisorderGeneAssociationType><Name lang="en">Modifying germline mutation in</Name></DisorderGeneAssociationType>
        </DisorderGeneAssociation>
      </DisorderGeneAssociationList>
    </Disorder>
  </DisorderList>
</JDBOR>`

func TestConvertGeneAssociations(t *testing.T) {
	in := writeInput(t, "en_product6.xml", genesXML)
	out := filepath.Join(t.TempDir(), "en_product6.csv")

	rep, err := ConvertGeneAssociations(in, out, "en", discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Records)
	assert.Equal(t, 2, rep.Rows)
	assert.Equal(t, 1, rep.Skipped)
	assert.Equal(t, 1, rep.UnknownSources)

	records := readCSV(t, out)
	require.Len(t, records, 3)
	require.Equal(t, GeneColumns, records[0])

	cols := make(map[string]int, len(GeneColumns))
	for i, c := range GeneColumns {
		cols[c] = i
	}

	row := records[1]
	assert.Equal(t, "17601", row[cols["DisorderID"]])
	assert.Equal(t, "166024", row[cols["OrphaCode"]])
	assert.Equal(t, "Multiple epiphyseal dysplasia, Al-Gazali type", row[cols["DisorderName"]])
	assert.Equal(t, "Disease", row[cols["DisorderType"]])
	assert.Equal(t, "22587682[PMID]", row[cols["SourceOfValidation"]])
	assert.Equal(t, "Disease-causing germline mutation(s) in", row[cols["AssociationType"]])
	assert.Equal(t, "Assessed", row[cols["AssociationStatus"]])
	assert.Equal(t, "20160", row[cols["GeneID"]])
	assert.Equal(t, "kinesin family member 7", row[cols["GeneName"]])
	assert.Equal(t, "KIF7", row[cols["GeneSymbol"]])
	assert.Equal(t, "JBTS12; UNC51.4", row[cols["GeneSynonyms"]])
	assert.Equal(t, "gene with protein product", row[cols["GeneType"]])
	assert.Equal(t, "15q26.1", row[cols["GeneLocus"]])
	assert.Equal(t, "1", row[cols["LocusKey"]])
	assert.Equal(t, "30497", row[cols["Ref_HGNC"]])
	assert.Equal(t, "611254", row[cols["Ref_OMIM"]])
	assert.Equal(t, "", row[cols["Ref_Ensembl"]])

	// The disorder's fields repeat identically on every child row.
	second := records[2]
	assert.Equal(t, row[cols["DisorderID"]], second[cols["DisorderID"]])
	assert.Equal(t, row[cols["OrphaCode"]], second[cols["OrphaCode"]])
	assert.Equal(t, row[cols["DisorderName"]], second[cols["DisorderName"]])
	assert.Equal(t, "20161", second[cols["GeneID"]])
	assert.Equal(t, "ABC1", second[cols["GeneSymbol"]])
	assert.Equal(t, "", second[cols["AssociationStatus"]])
}

func TestConvertGeneAssociationsZeroQualifyingChildren(t *testing.T) {
	xml := `<JDBOR><DisorderList>
	  <Disorder id="1">
	    <OrphaCode>100</OrphaCode>
	    <Name lang="en">No genes here</Name>
	  </Disorder>
	</DisorderList></JDBOR>`
	in := writeInput(t, "en_product6.xml", xml)
	out := filepath.Join(t.TempDir(), "en_product6.csv")

	rep, err := ConvertGeneAssociations(in, out, "en", discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Records)
	assert.Equal(t, 0, rep.Rows)

	// Header only: a parent with no qualifying children contributes
	// zero rows, not one parent-only row.
	records := readCSV(t, out)
	require.Len(t, records, 1)
	assert.Equal(t, GeneColumns, records[0])
}
